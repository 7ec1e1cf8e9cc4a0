package ctxutil

import "context"

func Next[T any](ctx context.Context, channel chan T) (out T, ok bool) {
	select {
	case out = <-channel:
		return out, true
	case <-ctx.Done():
		return out, false
	}
}

// Replace puts v on a buffered channel, discarding whatever value is still
// waiting there so a slow reader only ever sees the newest one.
func Replace[T any](channel chan T, v T) {
	for {
		select {
		case channel <- v:
			return
		default:
		}

		select {
		case <-channel:
		default:
		}
	}
}
