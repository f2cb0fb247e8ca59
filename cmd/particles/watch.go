package main

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// configWatcher 监视粒子配置文件，文件保存后通过 Changed 通知一次
//
// 编辑器保存时常先删除再创建文件，所以监视的是所在目录。
type configWatcher struct {
	watcher *fsnotify.Watcher
	target  string
	changed chan struct{}
	done    chan struct{}
	once    sync.Once
}

func newConfigWatcher(path string) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	cw := &configWatcher{
		watcher: watcher,
		target:  filepath.Clean(path),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go cw.run()
	log.Printf("[Watcher] Watching %s", cw.target)
	return cw, nil
}

func (cw *configWatcher) run() {
	defer close(cw.done)
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// 上一次通知还没被取走时合并
			select {
			case cw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[Watcher] Error: %v", err)
		}
	}
}

// Changed 自上次调用以来文件是否被修改过，不阻塞
func (cw *configWatcher) Changed() bool {
	select {
	case <-cw.changed:
		return true
	default:
		return false
	}
}

// Close 停止监视
func (cw *configWatcher) Close() {
	cw.once.Do(func() {
		cw.watcher.Close()
		<-cw.done
	})
}
