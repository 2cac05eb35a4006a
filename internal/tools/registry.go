package tools

import "github.com/zenik/zenik/internal/platform"

// Host returns every tool any module may use, in display order.
func Host() []Tool {
	return []Tool{
		{
			Name:    "ping",
			Purpose: "reachability checks",
			Modules: []string{"ping"},
			Packages: map[platform.PackageManager]string{
				platform.PMApt: "iputils-ping",
				platform.PMDnf: "iputils",
			},
		},
		{
			Name:    "nslookup",
			Purpose: "DNS queries",
			Modules: []string{"nslookup"},
			Packages: map[platform.PackageManager]string{
				platform.PMApt:    "dnsutils",
				platform.PMDnf:    "bind-utils",
				platform.PMPacman: "bind",
				platform.PMApk:    "bind-tools",
			},
		},
		{
			Name:    "tracert",
			Purpose: "route tracing",
			Modules: []string{"traceroute"},
			OS:      []string{"windows"},
		},
		{
			Name:         "traceroute",
			Alternatives: []string{"tracepath"},
			Purpose:      "route tracing",
			Modules:      []string{"traceroute"},
			OS:           []string{"linux", "darwin", "freebsd", "openbsd", "netbsd"},
		},
		{
			Name:         "ip",
			Alternatives: []string{"ifconfig"},
			Purpose:      "interface listing",
			Modules:      []string{"netconfig"},
			OS:           []string{"linux"},
			Packages: map[platform.PackageManager]string{
				platform.PMApt:    "iproute2",
				platform.PMDnf:    "iproute",
				platform.PMPacman: "iproute2",
				platform.PMApk:    "iproute2",
			},
		},
		{
			Name:    "lspci",
			Purpose: "GPU identification",
			Modules: []string{"gpu"},
			OS:      []string{"linux"},
			Packages: map[platform.PackageManager]string{
				platform.PMApt:    "pciutils",
				platform.PMDnf:    "pciutils",
				platform.PMPacman: "pciutils",
				platform.PMApk:    "pciutils",
			},
		},
		{
			Name:    "system_profiler",
			Purpose: "GPU identification",
			Modules: []string{"gpu"},
			OS:      []string{"darwin"},
		},
		{
			Name:    "powershell",
			Purpose: "GPU identification",
			Modules: []string{"gpu"},
			OS:      []string{"windows"},
		},
	}
}

// For returns the tools relevant on goos.
func For(goos string) []Tool {
	var out []Tool
	for _, t := range Host() {
		if t.AppliesTo(goos) {
			out = append(out, t)
		}
	}
	return out
}
