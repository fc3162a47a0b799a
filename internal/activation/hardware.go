// Package activation derives a machine-bound hardware identifier and
// verifies activation keys issued against it.
package activation

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// UnknownEnvironmentID is returned where the platform offers no machine
// identifier, such as containerized or restricted cloud runtimes.
const UnknownEnvironmentID = "CLOUD-ENV-INSTANCE"

// machineUUID is swapped in tests to avoid touching the host.
var machineUUID = readMachineUUID

// readMachineUUID fetches a raw, platform-specific machine identifier.
func readMachineUUID() (string, error) {
	switch runtime.GOOS {
	case "linux":
		raw, err := os.ReadFile("/etc/machine-id")
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	case "darwin":
		out, err := exec.Command("ioreg", "-rd1", "-c", "IOPlatformExpertDevice").Output()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	case "windows":
		out, err := exec.Command("wmic", "csproduct", "get", "uuid").Output()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(out)), nil
	}
	return "", os.ErrNotExist
}

// HardwareID hashes the machine identifier into a 16-character grouped
// token. Repeated calls on the same machine return the same value; hosts
// without an identifier get UnknownEnvironmentID instead of an error.
func HardwareID() string {
	raw, err := machineUUID()
	if err != nil || raw == "" {
		return UnknownEnvironmentID
	}

	sum := sha256.Sum256([]byte(raw))
	return groupKey(strings.ToUpper(hex.EncodeToString(sum[:])))
}
