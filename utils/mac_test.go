package utils

import (
	"regexp"
	"testing"
)

func TestGenerateMAC(t *testing.T) {
	canonical := regexp.MustCompile(`^[0-9a-f]{2}(:[0-9a-f]{2}){5}$`)
	for i := 0; i < 10000; i++ {
		mac, err := GenerateMAC()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(mac) != 6 {
			t.Fatalf("expected 6 bytes, got %d", len(mac))
		}
		if mac[0]&0x01 != 0 {
			t.Errorf("multicast bit set: %s", mac)
		}
		if mac[0]&0x02 == 0 {
			t.Errorf("locally-administered bit clear: %s", mac)
		}
		if !canonical.MatchString(mac.String()) {
			t.Errorf("non-canonical format: %q", mac.String())
		}
	}
}
