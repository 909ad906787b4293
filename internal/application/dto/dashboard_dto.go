package dto

// DashboardResponse contadores agregados para el tablero de operación.
type DashboardResponse struct {
	Families        int `json:"families"`
	OpenNeedsHigh   int `json:"open_needs_high"`
	OpenNeedsMedium int `json:"open_needs_medium"`
	OpenNeedsLow    int `json:"open_needs_low"`
	AidsThisMonth   int `json:"aids_this_month"`
	ArticlesLow     int `json:"articles_below_min"`
}
