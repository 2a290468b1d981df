package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/netlayers/dissect"
)

// startDescriptors names the decoders a caller may start a frame at, mirroring
// the entry-point choice a container reader makes from link_type. Ethernet
// is the default, since captures are link-layer framed in practice.
var startDescriptors = map[string]dissect.Descriptor{
	"ethernet": {ShortName: "Ethernet", Layer: dissect.LayerLink, DecoderID: dissect.ProtoEthernet},
	"arp":      {ShortName: "ARP", Layer: dissect.LayerLink, DecoderID: dissect.ProtoARPFamily},
	"ipv4":     {ShortName: "IPv4", Layer: dissect.LayerInternet, DecoderID: dissect.ProtoIPv4},
	"ipv6":     {ShortName: "IPv6", Layer: dissect.LayerInternet, DecoderID: dissect.ProtoIPv6},
	"tcp":      {ShortName: "TCP", Layer: dissect.LayerTransport, DecoderID: dissect.ProtoTCP},
	"udp":      {ShortName: "UDP", Layer: dissect.LayerTransport, DecoderID: dissect.ProtoUDP},
	"http":     {ShortName: "HTTP", Layer: dissect.LayerApplication, DecoderID: dissect.ProtoHTTP1},
	"icmpv4":   {ShortName: "ICMP", Layer: dissect.LayerInternet, DecoderID: dissect.ProtoICMPv4},
	"icmpv6":   {ShortName: "ICMPv6", Layer: dissect.LayerInternet, DecoderID: dissect.ProtoICMPv6},
}

func main() {
	var (
		inputPath = flag.String("input", "", "path to a file of newline-delimited hex-encoded packets ('#' lines and blanks are skipped)")
		start     = flag.String("start", "ethernet", "decoder to start each packet at: "+strings.Join(startNames(), "|"))
		logLevel  = flag.String("log-level", "info", "debug|info|warn|error")
		window    = flag.Duration("window", 15*time.Minute, "sliding window duration for decode stats (e.g. 15m, 1h)")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: dissect -input packets.hex [-start ethernet] [-window 15m]")
		os.Exit(2)
	}

	hint, ok := startDescriptors[strings.ToLower(*start)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown -start descriptor %q (want one of: %s)\n", *start, strings.Join(startNames(), ", "))
		os.Exit(2)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(*logLevel)})
	logger := slog.New(handler).With("component", "dissect")

	lines, err := readHexLines(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", *inputPath, err)
		os.Exit(1)
	}

	stats := NewDecodeStats(*window)
	entries := make([]decodedEntry, 0, len(lines))

	for i, raw := range lines {
		frame, decErr := dissect.DecodeFrame(raw, hint)
		entry := decodedEntry{index: i, frame: frame, err: decErr}
		entries = append(entries, entry)

		if decErr != nil {
			logger.Warn("top-level decode failed", "index", i, "err", decErr)
			stats.RecordError(hint.ShortName)
			continue
		}

		head := hint.ShortName
		if frame.Chain.Len() > 0 {
			head = frame.Chain.Entries()[0].ShortName
		}
		if hasErrorField(frame.Info) {
			logger.Warn("frame degraded to Raw fallback", "index", i, "chain", frame.Chain.String())
			stats.RecordError(head)
		} else {
			logger.Debug("decoded frame", "index", i, "chain", frame.Chain.String())
			stats.RecordOK(head)
		}
	}

	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no packets found in input")
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(entries, stats), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
		os.Exit(1)
	}
}

// readHexLines reads path and decodes each non-blank, non-comment line as a
// hex-encoded packet.
func readHexLines(path string) ([][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out [][]byte
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.ReplaceAll(line, " ", "")
		b, err := hex.DecodeString(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, b)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// hasErrorField reports whether rec or any record nested under it carries
// the "__error__" marker a degraded layer leaves behind.
func hasErrorField(rec *dissect.Record) bool {
	if rec == nil {
		return false
	}
	for _, f := range rec.Fields() {
		if f.Name == "__error__" {
			return true
		}
		if child, ok := f.Value.Record(); ok && hasErrorField(child) {
			return true
		}
	}
	return false
}

func startNames() []string {
	names := make([]string, 0, len(startDescriptors))
	for name := range startDescriptors {
		names = append(names, name)
	}
	return names
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
