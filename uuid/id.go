package uuid

import (
	"github.com/google/uuid"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

type IDService struct{}

func (ids *IDService) NewID() tracker.ID {
	return uuid.New()
}

func (ids *IDService) NewIDFromString(id string) (tracker.ID, error) {
	return uuid.Parse(id)
}
