package emitter

import (
	"github.com/google/uuid"
)

// IDGenerator produces subscription ids. It exists so tests can pin ids.
type IDGenerator interface {
	New() string
}

type uuidGenerator struct{}

func (uuidGenerator) New() string {
	return uuid.NewString()
}
