package domain

// SourceMode side of the conversion the user pays with.
type SourceMode string

const (
	// SourceModeFiat the source asset is a fiat currency.
	SourceModeFiat SourceMode = "fiat"
	// SourceModeCrypto the source asset is a cryptocurrency.
	SourceModeCrypto SourceMode = "crypto"
)

// Default source asset codes selected after a mode switch.
const (
	DefaultFiatCode   = "USD"
	DefaultCryptoCode = "PI"
)

// String returns the string representation.
func (m SourceMode) String() string {
	return string(m)
}

// IsValid checks if the SourceMode value is valid.
func (m SourceMode) IsValid() bool {
	return m == SourceModeFiat || m == SourceModeCrypto
}

// Toggle flips the mode and returns the source asset code the selection
// resets to. It is the only transition between the two modes.
func (m SourceMode) Toggle() (SourceMode, string) {
	if m == SourceModeFiat {
		return SourceModeCrypto, DefaultCryptoCode
	}
	return SourceModeFiat, DefaultFiatCode
}
