package script

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/script-fighter/core"
	"github.com/lixenwraith/script-fighter/event"
)

// Watcher turns filesystem changes under the script directory into
// reload events. Editors save in bursts, so changes are debounced: the
// event fires once the directory has been quiet for the full window
type Watcher struct {
	fsw      *fsnotify.Watcher
	queue    *event.Queue
	debounce time.Duration
	done     chan struct{}
}

// WatchScripts starts watching dir for Lua changes and pushes
// EventReloadRequested into the queue after each settled burst
func WatchScripts(dir string, debounce time.Duration, queue *event.Queue) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		queue:    queue,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	core.Go(w.run)

	core.LogInfo("watching %s for script changes", dir)
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if filepath.Ext(ev.Name) != ".lua" {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.queue.Push(event.Event{Type: event.EventReloadRequested})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			core.LogWarn("script watcher error: %v", err)
		}
	}
}

// Close stops the watcher goroutine and releases the inotify handle
func (w *Watcher) Close() {
	close(w.done)
	w.fsw.Close()
}
