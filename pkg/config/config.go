package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Stock    StockConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig fuente de datos (Apps Script Webapp) y política de caché.
// URL vacía no impide arrancar: cada request al dashboard responde el
// error de configuración hasta que se defina.
type UpstreamConfig struct {
	URL                string // APPS_SCRIPT_URL
	RevalidateSeconds  int    // s-maxage del Cache-Control de la respuesta
	RefreshSeconds     int    // intervalo del refresco periódico en memoria
	RequestTimeoutSecs int    // timeout de la llamada HTTP al Apps Script
}

// StockConfig umbrales del cálculo de cobertura de stock. Son parámetros
// con nombre, no constantes mágicas: se pueden ajustar por entorno.
type StockConfig struct {
	WindowDays int // ventana de historial para velocidad de venta
	AlertDays  int // cobertura < AlertDays → alerta de reposición
	WatchDays  int // cobertura < WatchDays → en observación
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, APPS_SCRIPT_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "ventas-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Upstream: UpstreamConfig{
			URL:                getString(v, "APPS_SCRIPT_URL", ""),
			RevalidateSeconds:  getInt(v, "REVALIDATE_SECONDS", 300),
			RefreshSeconds:     getInt(v, "REFRESH_INTERVAL_SECONDS", 300),
			RequestTimeoutSecs: getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 25),
		},
		Stock: StockConfig{
			WindowDays: getInt(v, "STOCK_WINDOW_DAYS", 90),
			AlertDays:  getInt(v, "STOCK_ALERT_DAYS", 15),
			WatchDays:  getInt(v, "STOCK_WATCH_DAYS", 30),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
