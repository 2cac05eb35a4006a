package modules

import (
	"context"
	"errors"
	"fmt"
	"net"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zenik/zenik/internal/platform"
)

const (
	lookupTimeout     = 20 * time.Second
	pingTimeout       = 60 * time.Second
	tracerouteTimeout = 90 * time.Second
	netconfigTimeout  = 25 * time.Second
)

// ErrToolMissing means no suitable host binary was found on PATH.
var ErrToolMissing = errors.New("required tool not installed")

// LocalIP returns the address of the interface used for outbound traffic.
// Dialing UDP sends no packets; it only selects a route.
func LocalIP() (net.IP, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return nil, fmt.Errorf("select route: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected local address %v", conn.LocalAddr())
	}
	return addr.IP, nil
}

func localIPTool(d Deps) error {
	ip, err := LocalIP()
	if err != nil {
		return err
	}
	fmt.Fprintln(d.Out)
	platform.PrintKV(d.Out, "Local IP", ip.String())
	d.Log.Info("viewed local ip")
	return nil
}

// pingArgs builds the ping invocation for goos.
func pingArgs(goos, host string, count int) []string {
	flag := "-c"
	if goos == "windows" {
		flag = "-n"
	}
	return []string{flag, strconv.Itoa(count), host}
}

func pingTool(d Deps) error {
	host, err := d.ask("Host to ping")
	if err != nil {
		return err
	}
	raw, err := d.askDefault("How many pings?", "4")
	if err != nil {
		return err
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 {
		count = 4
	}
	if !platform.Exists("ping") {
		return fmt.Errorf("ping: %w", ErrToolMissing)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	fmt.Fprintln(d.Out)
	d.Log.Info("ping", zap.String("host", host), zap.Int("count", count))
	return platform.Stream(ctx, d.Out, "ping", pingArgs(runtime.GOOS, host, count)...)
}

func nslookupTool(d Deps) error {
	host, err := d.ask("Hostname")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()
	d.Log.Info("dns lookup", zap.String("host", host))

	if platform.Exists("nslookup") {
		out, err := platform.OutputContext(ctx, "nslookup", host)
		if out != "" {
			printBlock(d.Out, out)
		}
		return err
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", host, err)
	}
	fmt.Fprintln(d.Out)
	platform.PrintKV(d.Out, "Name", host)
	for _, a := range addrs {
		platform.PrintKV(d.Out, "Address", a)
	}
	return nil
}

// tracerouteCommand picks the route tracing binary for goos.
func tracerouteCommand(goos string) string {
	if goos == "windows" {
		return platform.FirstExisting("tracert")
	}
	return platform.FirstExisting("traceroute", "tracepath")
}

func tracerouteTool(d Deps) error {
	host, err := d.ask("Host")
	if err != nil {
		return err
	}
	name := tracerouteCommand(runtime.GOOS)
	if name == "" {
		return fmt.Errorf("traceroute: %w", ErrToolMissing)
	}

	ctx, cancel := context.WithTimeout(context.Background(), tracerouteTimeout)
	defer cancel()

	fmt.Fprintln(d.Out)
	d.Log.Info("traceroute", zap.String("host", host), zap.String("tool", name))
	return platform.Stream(ctx, d.Out, name, host)
}

func netconfigTool(d Deps) error {
	ctx, cancel := context.WithTimeout(context.Background(), netconfigTimeout)
	defer cancel()
	d.Log.Info("viewed network config")

	var name string
	var args []string
	switch {
	case runtime.GOOS == "windows":
		name, args = "ipconfig", []string{"/all"}
	case platform.Exists("ip"):
		name, args = "ip", []string{"addr", "show"}
	case platform.Exists("ifconfig"):
		name, args = "ifconfig", []string{"-a"}
	}
	if name != "" {
		out, err := platform.OutputContext(ctx, name, args...)
		if out != "" {
			printBlock(d.Out, out)
		}
		return err
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return fmt.Errorf("list interfaces: %w", err)
	}
	fmt.Fprintln(d.Out)
	for _, line := range describeInterfaces(ifaces) {
		fmt.Fprintln(d.Out, line)
	}
	return nil
}

func describeInterfaces(ifaces []net.Interface) []string {
	var lines []string
	for _, iface := range ifaces {
		lines = append(lines, fmt.Sprintf("  %s (%s)", platform.Bold(iface.Name), iface.Flags))
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			lines = append(lines, "      "+a.String())
		}
		if len(iface.HardwareAddr) > 0 {
			lines = append(lines, "      ether "+strings.ToLower(iface.HardwareAddr.String()))
		}
	}
	return lines
}
