package standings

// DriverRow is a driver standings entry as returned by a provider. Numeric
// columns stay as the provider delivers them; see transform for coercion.
type DriverRow struct {
	Position         string
	GivenName        string
	FamilyName       string
	ConstructorNames []string // grows with mid-season transfers; last is current
	Points           string
}

// ConstructorRow is a constructor standings entry as returned by a provider.
type ConstructorRow struct {
	Position        string
	ConstructorName string
	Points          string
}

// DriverStanding is a display-ready driver standings record.
type DriverStanding struct {
	Position    int    `json:"position"`
	Driver      string `json:"driver"`
	Constructor string `json:"constructor"`
	Points      int    `json:"points"`
}

// ConstructorStanding is a display-ready constructor standings record.
type ConstructorStanding struct {
	Position    int    `json:"position"`
	Constructor string `json:"constructor"`
	Points      int    `json:"points"`
}
