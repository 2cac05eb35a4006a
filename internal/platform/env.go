package platform

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
)

// Kind classifies the host the tool is running on.
type Kind int

const (
	// KindUnknown means no indicator was conclusive. Treated as constrained.
	KindUnknown Kind = iota
	// KindDesktop is a full desktop operating system.
	KindDesktop
	// KindMobileConstrained is a minimal Linux userland inside a mobile
	// terminal emulator (iSH on iOS/iPadOS).
	KindMobileConstrained
)

var kindNames = map[Kind]string{
	KindUnknown:           "unknown",
	KindDesktop:           "desktop",
	KindMobileConstrained: "mobile",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a case-insensitive name ("desktop", "mobile", "unknown")
// to its Kind.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown platform kind %q", s)
}

// Capability is an optional host capability. Values are bit flags so a set
// of them fits in a comparable Environment.
type Capability uint8

const (
	CapGPUAccess Capability = 1 << iota
	CapGameController
	CapNativeShell
)

// allCapabilities lists every capability in display order.
var allCapabilities = []Capability{CapGPUAccess, CapGameController, CapNativeShell}

// AllCapabilities returns every known capability in display order.
func AllCapabilities() []Capability {
	return append([]Capability(nil), allCapabilities...)
}

var capabilityNames = map[Capability]string{
	CapGPUAccess:      "gpu_access",
	CapGameController: "game_controller",
	CapNativeShell:    "native_shell",
}

func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}

// ParseCapability maps a capability name such as "game_controller" to its
// Capability. Dashes and case are ignored.
func ParseCapability(s string) (Capability, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for c, n := range capabilityNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", s)
}

// Environment is an immutable description of the host. All fields are
// unexported; Environment values are comparable with ==.
type Environment struct {
	kind        Kind
	constrained bool
	caps        Capability
	goos        string
	arch        string
	kernel      string
}

// NewEnvironment builds a synthetic Environment. Detection goes through
// [Detect]; this constructor exists for tests and explicit overrides.
func NewEnvironment(kind Kind, constrained bool, caps ...Capability) Environment {
	var set Capability
	for _, c := range caps {
		set |= c
	}
	return Environment{kind: kind, constrained: constrained, caps: set}
}

// Kind returns the platform classification.
func (e Environment) Kind() Kind { return e.kind }

// Constrained reports whether the host has limited resources. Detection
// marks unknown platforms constrained.
func (e Environment) Constrained() bool { return e.constrained }

// OS returns the GOOS the probe ran on. Empty for synthetic environments.
func (e Environment) OS() string { return e.goos }

// Arch returns the GOARCH the probe ran on.
func (e Environment) Arch() string { return e.arch }

// Kernel returns the kernel release string, or "" when unavailable.
func (e Environment) Kernel() string { return e.kernel }

// Has reports whether capability c was detected.
func (e Environment) Has(c Capability) bool {
	return c != 0 && e.caps&c == c
}

// Capabilities returns the detected capabilities in display order.
func (e Environment) Capabilities() []Capability {
	var out []Capability
	for _, c := range allCapabilities {
		if e.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Without returns a copy of e with the given capabilities removed.
// There is deliberately no way to add capabilities to an existing value.
func (e Environment) Without(caps ...Capability) Environment {
	for _, c := range caps {
		e.caps &^= c
	}
	return e
}

func (e Environment) String() string {
	names := make([]string, 0, len(allCapabilities))
	for _, c := range e.Capabilities() {
		names = append(names, c.String())
	}
	return fmt.Sprintf("%s (constrained=%t, capabilities=[%s])", e.kind, e.constrained, strings.Join(names, ","))
}

// Report is the serializable view of an Environment.
type Report struct {
	Platform     string   `json:"platform" yaml:"platform"`
	Constrained  bool     `json:"constrained" yaml:"constrained"`
	Capabilities []string `json:"capabilities" yaml:"capabilities"`
	OS           string   `json:"os" yaml:"os"`
	Arch         string   `json:"arch" yaml:"arch"`
	Kernel       string   `json:"kernel,omitempty" yaml:"kernel,omitempty"`
}

// Report returns a serializable snapshot of e.
func (e Environment) Report() Report {
	caps := make([]string, 0, len(allCapabilities))
	for _, c := range e.Capabilities() {
		caps = append(caps, c.String())
	}
	return Report{
		Platform:     e.kind.String(),
		Constrained:  e.constrained,
		Capabilities: caps,
		OS:           e.goos,
		Arch:         e.arch,
		Kernel:       e.kernel,
	}
}

// Signals are the raw host indicators the probe classifies.
type Signals struct {
	GOOS          string
	Arch          string
	KernelRelease string
	// Override forces a platform kind ("desktop", "mobile", "unknown").
	// Empty means autodetect.
	Override      string
	MobileMarker  bool // /proc/ish present or ISH_VERSION set
	DisplayServer bool // DISPLAY or WAYLAND_DISPLAY set
	DRM           bool // /sys/class/drm present
	Shell         bool // a POSIX shell (or cmd.exe) is on PATH
}

// ishProcPath only exists under the iSH emulator.
const ishProcPath = "/proc/ish"

// CollectSignals gathers Signals from the local host. It only reads
// environment variables and the local filesystem.
func CollectSignals() Signals {
	s := Signals{
		GOOS:          runtime.GOOS,
		Arch:          runtime.GOARCH,
		KernelRelease: kernelRelease(),
		Override:      os.Getenv("ZENIK_PLATFORM"),
		MobileMarker:  FileExists(ishProcPath) || os.Getenv("ISH_VERSION") != "",
		DisplayServer: os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != "",
		DRM:           FileExists("/sys/class/drm"),
	}
	if runtime.GOOS == "windows" {
		s.Shell = Exists("cmd") || Exists("powershell")
	} else {
		s.Shell = Exists("sh")
	}
	return s
}

// DetectWith classifies the given signals. It is pure: equal Signals always
// yield equal Environments.
func DetectWith(s Signals) Environment {
	kind := classify(s)
	env := Environment{kind: kind, goos: s.GOOS, arch: s.Arch, kernel: s.KernelRelease}

	switch kind {
	case KindDesktop:
		env.caps = CapGPUAccess | CapGameController | CapNativeShell
	default:
		// Mobile and unknown hosts only get what was verified locally.
		env.constrained = true
		if s.Shell {
			env.caps = CapNativeShell
		}
	}
	return env
}

func classify(s Signals) Kind {
	if s.Override != "" {
		if k, err := ParseKind(s.Override); err == nil {
			return k
		}
	}
	if s.MobileMarker || strings.Contains(strings.ToLower(s.KernelRelease), "-ish") {
		return KindMobileConstrained
	}
	switch s.GOOS {
	case "windows", "darwin":
		return KindDesktop
	case "linux", "freebsd", "openbsd", "netbsd":
		if s.DisplayServer || s.DRM {
			return KindDesktop
		}
	}
	return KindUnknown
}

var (
	detectOnce sync.Once
	detected   Environment
)

// Detect probes the host once per process and returns the cached result on
// every later call.
func Detect() Environment {
	detectOnce.Do(func() {
		detected = DetectWith(CollectSignals())
	})
	return detected
}
