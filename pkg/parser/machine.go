package parser

import (
	"hash/fnv"
	"net"
	"os"
	"strconv"
)

// ResolveMachineName returns a stable identifier for the current machine:
// a hash of the first non-loopback hardware address, so identifiers stay
// stable across builds without leaking the hostname. Falls back to the
// hostname when no interface qualifies.
func ResolveMachineName() string {
	if ifaces, err := net.Interfaces(); err == nil {
		for _, ifc := range ifaces {
			if ifc.Flags&net.FlagLoopback != 0 || len(ifc.HardwareAddr) == 0 {
				continue
			}
			h := fnv.New64a()
			_, _ = h.Write(ifc.HardwareAddr)
			return strconv.FormatUint(h.Sum64(), 16)
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown"
}
