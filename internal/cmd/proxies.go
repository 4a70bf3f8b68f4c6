package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobradar/internal/config"
	"github.com/jimezsa/jobradar/internal/models"
	"github.com/jimezsa/jobradar/internal/network"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Check each proxy against the job provider."`
}

type ProxyCheckCmd struct {
	Proxies string        `help:"Comma-separated proxy URLs (default: JOBRADAR_PROXIES, then proxies.txt)."`
	Target  string        `help:"Target URL." default:"https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search?keywords=engineer"`
	Timeout time.Duration `help:"Timeout per proxy." default:"15s"`
}

type ProxyCheckResult struct {
	Proxy     string `json:"proxy"`
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Blocked   bool   `json:"blocked"`
	Error     string `json:"error,omitempty"`
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(p.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return network.ErrNoProxies
	}

	results := make([]ProxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		result := p.check(ctx.runContext(), proxy)
		ctx.Logger.Debug().
			Str("proxy", result.Proxy).
			Str("status", result.Status).
			Int64("latency_ms", result.LatencyMS).
			Msg("proxy checked")
		results = append(results, result)
	}

	return writeProxyResults(ctx, results)
}

func (p *ProxyCheckCmd) check(ctx context.Context, proxy string) ProxyCheckResult {
	result := ProxyCheckResult{Proxy: proxy, Status: "error"}

	rotator, err := network.NewRotator([]string{proxy}, proxyBanDuration)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	// A negative interval turns pacing off; each client sends one request.
	client, err := network.NewClient(rotator, models.ProviderConfig{Timeout: p.Timeout, PageInterval: -1})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, p.Target, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	_ = resp.Body.Close()

	result.LatencyMS = time.Since(start).Milliseconds()
	result.Status = strconv.Itoa(resp.StatusCode)
	result.Blocked = network.BlockedStatus(resp.StatusCode)
	return result
}

func writeProxyResults(ctx *Context, results []ProxyCheckResult) error {
	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if ctx.PlainText {
		for _, res := range results {
			line := []string{res.Proxy, res.Status, strconv.FormatInt(res.LatencyMS, 10), strconv.FormatBool(res.Blocked), res.Error}
			fmt.Fprintln(ctx.Out, strings.Join(line, "\t"))
		}
		return nil
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\tblocked\terror")
	for _, res := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%t\t%s\n", res.Proxy, res.Status, res.LatencyMS, res.Blocked, res.Error)
	}
	return tw.Flush()
}
