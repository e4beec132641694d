package renderer

import "testing"

func TestFramebufferBytes(t *testing.T) {
	config := validTestConfig()
	// 16x8 pixels of three float64 sums
	if got := config.FramebufferBytes(); got != 16*8*24 {
		t.Errorf("Expected %d bytes, got %d", 16*8*24, got)
	}
}

func TestCheckMemory(t *testing.T) {
	config := validTestConfig()

	tests := []struct {
		name      string
		available uint64
		wantErr   bool
	}{
		{"plenty", 1 << 30, false},
		{"exact fit", 16 * 8 * 24, false},
		{"too small", 1000, true},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.CheckMemory(SystemInfo{AvailableRAM: tt.available})
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckMemory() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadSystemInfo(t *testing.T) {
	info, err := ReadSystemInfo()
	if err != nil {
		t.Skipf("system information unavailable: %v", err)
	}
	if info.LogicalCores < 1 || info.TotalRAM == 0 {
		t.Errorf("Unexpected system info %+v", info)
	}
}
