package domain

// Session wallet session snapshot as seen by the bridge.
type Session struct {
	// Address connected account address, empty when disconnected.
	Address string `json:"address,omitempty"`
	// Connected whether a wallet session is active.
	Connected bool `json:"connected"`
}

// ShortAddress returns a truncated address for display, such as pi1234...5678.
func (s Session) ShortAddress() string {
	if len(s.Address) <= 12 {
		return s.Address
	}
	return s.Address[:6] + "..." + s.Address[len(s.Address)-4:]
}
