package config

import "time"

// UIConfig представляет настройки поведения клиента: пауза перед переходом
// после успешного входа (чтобы сообщение об успехе было видно) и период
// перезагрузки списка в режиме наблюдения.
type UIConfig struct {
	NavigationDelay time.Duration `yaml:"navigation_delay" env:"CLIENT_UI_NAVIGATION_DELAY" env-default:"1500ms"`
	WatchInterval   time.Duration `yaml:"watch_interval" env:"CLIENT_UI_WATCH_INTERVAL" env-default:"30s"`
}
