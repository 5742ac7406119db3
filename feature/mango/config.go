package mango

// Config holds credentials and endpoint settings for the Mango Office API.
type Config struct {
	// APIKey is the VPBX API key (vpbx_api_key).
	APIKey string `mapstructure:"api_key" default:""`
	// Salt is the shared secret appended when signing requests.
	Salt string `mapstructure:"salt" default:""`
	// APIURL is the incoming lines endpoint.
	APIURL string `mapstructure:"api_url" default:"https://app.mango-office.ru/vpbx/incominglines"`
	// TimeoutSeconds bounds the single request of a run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
