package api

import (
	"errors"
	"strings"
)

// Validator - implemented by payloads that check themselves after decoding
type Validator interface {
	Validate() error
}

func (p JoinPayload) Validate() error {
	if strings.TrimSpace(p.Username) == "" {
		return errors.New("username is required")
	}
	return nil
}

func (p HarvestPayload) Validate() error {
	if p.ObjectID == "" {
		return errors.New("objectId is required")
	}
	return nil
}

func (p CookPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p AttackPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p AdminPayload) Validate() error {
	if strings.TrimSpace(p.Command) == "" {
		return errors.New("command is required")
	}
	return nil
}

func (p ItemPayload) Validate() error {
	if p.ItemID == "" {
		return errors.New("itemId is required")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	if p.Slot == "" {
		return errors.New("slot is required")
	}
	return nil
}
