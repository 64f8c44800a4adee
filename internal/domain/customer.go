package domain

// Customer represents one member of the customer pool. Immutable once generated.
// Customers are never exported downstream; they only drive order attribution.
type Customer struct {
	ID           string  // opaque unique token (8 hex chars)
	ActivityProb float64 // normalized selection probability; all customers sum to 1.0
}
