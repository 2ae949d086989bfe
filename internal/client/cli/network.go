package cli

import (
	"context"
	"fmt"
	"time"
)

// Ping probes the server's connectivity endpoint and reports the latency.
func (a *App) Ping(ctx context.Context) error {
	start := time.Now()
	if err := a.probe(ctx); err != nil {
		fmt.Fprintf(a.out, "Server unreachable: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Server reachable (%s)\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// NetInfo prints where API requests are sent.
func (a *App) NetInfo(ctx context.Context) error {
	fmt.Fprintf(a.out, "Mode: %s\n", a.netInfo.Mode)
	fmt.Fprintf(a.out, "Base URL: %s\n", a.netInfo.BaseURL)
	fmt.Fprintf(a.out, "Host: %s\n", a.netInfo.Host)
	fmt.Fprintf(a.out, "Development: %t\n", a.netInfo.IsDevelopment)
	a.logger.Debug(ctx, "network info", "info", a.netInfo.String())
	return nil
}
