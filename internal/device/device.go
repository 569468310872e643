// Package device describes the machine the host runs on, in the terms a
// mobile shell expects: manufacturer, model, hardware and SoC.
package device

import (
	"bufio"
	"io/fs"
	"os"
	"runtime"
	"strings"
)

// SoCInfoLevel is the first platform level that reports SoC details.
const SoCInfoLevel = 31

// Info is a static description of the device.
type Info struct {
	Manufacturer    string `toml:"manufacturer"`
	Model           string `toml:"model"`
	Hardware        string `toml:"hardware"`
	SDKLevel        int    `toml:"sdk_level"`
	SoCModel        string `toml:"soc_model"`
	SoCManufacturer string `toml:"soc_manufacturer"`
}

// HasSoCInfo reports whether SoC fields should be published.
func (i Info) HasSoCInfo() bool {
	return i.SDKLevel >= SoCInfoLevel
}

// Merge returns i with every non-zero field of o applied on top.
func (i Info) Merge(o Info) Info {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&i.Manufacturer, o.Manufacturer)
	set(&i.Model, o.Model)
	set(&i.Hardware, o.Hardware)
	set(&i.SoCModel, o.SoCModel)
	set(&i.SoCManufacturer, o.SoCManufacturer)
	if o.SDKLevel != 0 {
		i.SDKLevel = o.SDKLevel
	}
	return i
}

// Uname is the subset of utsname the package uses.
type Uname struct {
	Sysname  string
	Nodename string
	Release  string
	Machine  string
}

// Detect inspects the running system.
func Detect() Info {
	return detect(os.DirFS("/"), readUname)
}

func detect(root fs.FS, uname func() (Uname, error)) Info {
	u, err := uname()
	if err != nil {
		u = Uname{Sysname: runtime.GOOS, Machine: runtime.GOARCH}
	}

	info := Info{
		Manufacturer: firstLine(root, "sys/devices/virtual/dmi/id/sys_vendor"),
		Model:        firstLine(root, "sys/devices/virtual/dmi/id/product_name"),
		Hardware:     u.Machine,
	}
	if info.Manufacturer == "" {
		info.Manufacturer = u.Sysname
	}
	if info.Model == "" {
		info.Model = u.Nodename
	}
	if info.Hardware == "" {
		info.Hardware = runtime.GOARCH
	}

	cpu := cpuInfo(root)
	info.SoCModel = firstOf(cpu, "model name", "Hardware", "Model")
	info.SoCManufacturer = firstOf(cpu, "vendor_id", "CPU implementer")
	return info
}

func firstLine(root fs.FS, name string) string {
	data, err := fs.ReadFile(root, name)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line)
}

// cpuInfo returns the first value of every key in /proc/cpuinfo.
func cpuInfo(root fs.FS) map[string]string {
	out := map[string]string{}
	f, err := root.Open("proc/cpuinfo")
	if err != nil {
		return out
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if _, seen := out[key]; !seen {
			out[key] = strings.TrimSpace(value)
		}
	}
	return out
}

func firstOf(m map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := m[k]; v != "" {
			return v
		}
	}
	return ""
}
