package primitives

import "github.com/google/uuid"

// TransactionID is an opaque, unique identity minted once per transaction.
// Equality is by pointer identity, matching how the coordinator and lock
// table key every map on *TransactionID; the embedded UUID exists only to
// give each transaction a stable, human-readable label for logs and errors.
type TransactionID struct {
	uuid uuid.UUID
}

// NewTransactionID mints a fresh, globally unique transaction identity.
func NewTransactionID() *TransactionID {
	return &TransactionID{uuid: uuid.New()}
}

func (tid *TransactionID) String() string {
	if tid == nil {
		return "TID(nil)"
	}
	return "TID-" + tid.uuid.String()
}

// Equals reports identity equality. Two distinct *TransactionID values are
// never equal even if (hypothetically) their UUIDs collided.
func (tid *TransactionID) Equals(other *TransactionID) bool {
	return tid == other
}
