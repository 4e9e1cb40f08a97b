package main

import (
	"log"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// 容器里按 cgroup 配额调整 GOMAXPROCS，解析期号的 worker 数依赖它
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		if verbose {
			log.Printf("[maxprocs] "+format, args...)
		}
	}))
	Execute()
}
