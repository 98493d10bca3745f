package allocation

import "errors"

// Error kinds surfaced by mutating operations. Reporting operations never
// error on missing data; they return empty or zero-valued results.
var (
	// ErrInvalidAmount rejects a negative total premium.
	ErrInvalidAmount = errors.New("invalid premium amount")
	// ErrInvalidPercentage rejects a risk percentage outside [0, 100].
	ErrInvalidPercentage = errors.New("risk percentage out of range")
	// ErrNotFound indicates an unknown allocation id.
	ErrNotFound = errors.New("allocation not found")
	// ErrAlreadyPosted rejects re-posting a posted allocation. The first
	// posting's attribution always stands.
	ErrAlreadyPosted = errors.New("allocation already posted")
)
