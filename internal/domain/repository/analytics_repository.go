package repository

// DashboardCounters agrupa los contadores agregados del tablero de operación.
type DashboardCounters struct {
	Families        int
	OpenNeedsHigh   int
	OpenNeedsMedium int
	OpenNeedsLow    int
	AidsThisMonth   int
	ArticlesLow     int
}

// AnalyticsRepository define el puerto de consultas agregadas (solo lectura).
type AnalyticsRepository interface {
	DashboardCounters(organizationID string) (*DashboardCounters, error)
}
