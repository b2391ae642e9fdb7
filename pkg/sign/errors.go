package sign

import "fmt"

// Error kinds returned by this package. Callers match them with errors.Is;
// the underlying diagnostic, when there is one, is wrapped alongside.
var (
	ErrInvalidKeyFormat      = fmt.Errorf("invalid private key format")
	ErrInvalidScalarEncoding = fmt.Errorf("invalid scalar encoding")
	ErrRecoveryFailed        = fmt.Errorf("signature recovery failed")
	ErrSignatureMismatch     = fmt.Errorf("signature does not match address")
)
