package entity

// Quote represents a market snapshot for one asset as returned by the
// market-data provider's markets listing.
type Quote struct {
	ID        string  // Provider asset id (e.g. "bitcoin")
	Symbol    string  // Ticker symbol (e.g. "btc")
	Name      string  // Display name (e.g. "Bitcoin")
	Price     float64 // Current price in quote currency
	Change24h float64 // 24h price change in percent
	Volume24h float64 // 24h trading volume
}
