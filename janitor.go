package tempusmap

import "time"

/*
startJanitor launches the background reclamation worker a handle gets
when constructed with WithAutoReclaim.

ROLE

The core never reclaims on its own initiative, Insert and Remove stay
lock-free regardless of whether anyone ever calls Reclaim. Left entirely
alone, a handle's retired-node buffer only shrinks when that handle calls
Reclaim itself. The janitor is the active-expiration half of that
picture: a ticker that calls Reclaim on a fixed schedule so a long-lived
handle that rarely calls Insert/Remove/Get still bounds its own retired
buffer.

EXECUTION MODEL

- interval <= 0: no janitor is started; reclamation is entirely manual.
- interval > 0: a time.Ticker drives Reclaim once per tick until Close.

The goroutine is independent of any caller thread.
*/
func (h *Handle[K, V]) startJanitor(interval time.Duration) {
	h.stopJanitor = make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				h.Reclaim()
			case <-h.stopJanitor:
				ticker.Stop()
				return
			}
		}
	}()
}
