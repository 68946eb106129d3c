package config

type AppConfig struct {
	Name        string
	Env         string
	Port        string
	BaseURL     string
	UploadDir   string
	MaxFileSize int64
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}
