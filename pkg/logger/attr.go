package logger

import (
	"fmt"
	"log/slog"
	"time"
)

// Error records err under "error"; nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func FeatureKey(key string) slog.Attr {
	return slog.String("feature_key", key)
}

// Owner records the config owner a feature is routed to.
func Owner(owner string) slog.Attr {
	if owner == "" {
		return slog.Attr{}
	}
	return slog.String("owner", owner)
}

// Source records which layer answered a lookup ("override" or "remote").
func Source(source fmt.Stringer) slog.Attr {
	return slog.String("source", source.String())
}

func ValueType(t fmt.Stringer) slog.Attr {
	return slog.String("value_type", t.String())
}

// Value records a resolved config value in its canonical string form.
func Value(v fmt.Stringer) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.String("value", v.String())
}

func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}

func InstanceID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("instance_id", id)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}
