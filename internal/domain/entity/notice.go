package entity

// Static content of the notice shown after the first successful check.
const (
	DonationTitle   = "☕ Buy me a coffee!"
	DonationNetwork = "Solana"
	DonationAddress = "EnnsuLo6dbzTvCt83Kw8SJqVucCwm4PgB3krRncZz4a6"
	Disclaimer      = "This is not the official checker of Meteora! We are just using their official API to fetch the points."
)
