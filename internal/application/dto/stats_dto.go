package dto

// StatsResponse conteos agregados para el panel admin.
// Revenue se expone como string con dos decimales, igual que el API original.
type StatsResponse struct {
	UserCount    int    `json:"userCount"`
	OrderCount   int    `json:"orderCount"`
	ProductCount int    `json:"productCount"`
	Revenue      string `json:"revenue"`
}
