package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"globalbroadcast/globe"
	"globalbroadcast/texture"
)

type Config struct {
	Port string
	// Logging
	LogLevel    string
	LogEncoding string
	// Globe animation
	FrameInterval time.Duration
	RotationStep  float64
	// Surface texture
	TextureURL              string
	TextureTimeout          time.Duration
	TextureBreakerThreshold int
	TextureBreakerTimeout   time.Duration
	// HTTP surface
	CORSOrigins   []string
	WSPushTimeout time.Duration
}

const (
	defaultPort                    = "8080"
	defaultFrameInterval           = globe.DefaultFrameInterval
	defaultRotationStep            = globe.DefaultRotationStep
	defaultTextureURL              = texture.DefaultURL
	defaultTextureTimeout          = 30 * time.Second
	defaultTextureBreakerThreshold = 3
	defaultTextureBreakerTimeout   = 30 * time.Second
	defaultCORSOrigins             = "http://localhost:5173,http://localhost:3000"
	defaultWSPushTimeout           = 5 * time.Second
)

// LoadConfig reads configuration from the environment, falling back to
// defaults. Numeric values that fail to parse or are not positive also fall
// back to their defaults.
func LoadConfig() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", defaultPort)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
	v.SetDefault("TEXTURE_URL", defaultTextureURL)
	v.SetDefault("CORS_ORIGINS", defaultCORSOrigins)

	return Config{
		Port:                    v.GetString("PORT"),
		LogLevel:                v.GetString("LOG_LEVEL"),
		LogEncoding:             v.GetString("LOG_ENCODING"),
		FrameInterval:           positiveDuration(v, "FRAME_INTERVAL", defaultFrameInterval),
		RotationStep:            positiveFloat(v, "ROTATION_STEP", defaultRotationStep),
		TextureURL:              v.GetString("TEXTURE_URL"),
		TextureTimeout:          positiveDuration(v, "TEXTURE_TIMEOUT", defaultTextureTimeout),
		TextureBreakerThreshold: positiveInt(v, "TEXTURE_BREAKER_THRESHOLD", defaultTextureBreakerThreshold),
		TextureBreakerTimeout:   positiveDuration(v, "TEXTURE_BREAKER_TIMEOUT", defaultTextureBreakerTimeout),
		CORSOrigins:             splitList(v.GetString("CORS_ORIGINS")),
		WSPushTimeout:           positiveDuration(v, "WS_PUSH_TIMEOUT", defaultWSPushTimeout),
	}
}

// viper's getters return the zero value when a string does not parse.
func positiveDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}

func positiveInt(v *viper.Viper, key string, def int) int {
	if n := v.GetInt(key); n > 0 {
		return n
	}
	return def
}

func positiveFloat(v *viper.Viper, key string, def float64) float64 {
	if f := v.GetFloat64(key); f > 0 {
		return f
	}
	return def
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
