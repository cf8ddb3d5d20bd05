package main

import (
	"context"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/meza/js-translations/cmd/jstrans"
	"github.com/meza/js-translations/internal/perf"
)

const perfLifecycleExecute = "app.lifecycle.execute"

type runDeps struct {
	execute func(ctx context.Context, args []string) int
	args    []string
}

func main() {
	os.Exit(runWithDeps(runDeps{
		execute: jstrans.Execute,
		args:    os.Args[1:],
	}))
}

func runWithDeps(deps runDeps) int {
	ctx, region := perf.StartRegionContext(context.Background(), perfLifecycleExecute)
	code := deps.execute(ctx, deps.args)
	region.SetDetail("exit_code", code)
	region.End()
	return code
}
