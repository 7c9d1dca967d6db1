package log

import "log/slog"

func SessionID[T ~string](id T) slog.Attr {
	return slog.String("session_id", string(id))
}

func InstanceID[T ~string](id T) slog.Attr {
	return slog.String("instance_id", string(id))
}

func Ticket[T ~string](key T) slog.Attr {
	return slog.String("ticket", string(key))
}

func Status[T ~string](status T) slog.Attr {
	return slog.String("status", string(status))
}

func Key(key string) slog.Attr {
	return slog.String("key", key)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
