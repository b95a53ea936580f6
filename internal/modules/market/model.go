// README: Market price statistics over for-sale listings.
package market

// PriceStats summarises current for-sale listings for one species (or all
// species when Species is empty).
type PriceStats struct {
	Species  string `json:"species"`
	Listings int    `json:"listings"`
	MinTHB   int64  `json:"min_thb"`
	MaxTHB   int64  `json:"max_thb"`
	AvgTHB   int64  `json:"avg_thb"`
}
