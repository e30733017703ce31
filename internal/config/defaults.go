package config

var defaults = map[string]any{
	"listen":    ":8080",
	"log_level": "info",

	"base_url": "http://localhost:8080",
	"data_dir": "./instance/data",

	"hr_email": "",

	"email.host":     "host.docker.internal",
	"email.port":     25,
	"email.username": "",
	"email.password": "",
	"email.from":     "noreply@example.com",
	"email.tls":      false,

	"storage.type":        "sqlite",
	"storage.sqlite.path": "./data/visitors.db",
}

func Defaults() map[string]any {
	values := make(map[string]any)
	for k, v := range defaults {
		values[k] = v
	}
	return values
}
