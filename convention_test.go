package tilescene

import "testing"

func TestParseConvention(t *testing.T) {
	tests := []struct {
		in      string
		want    Convention
		wantErr bool
	}{
		{"up", UpwardY, false},
		{" Upward ", UpwardY, false},
		{"y-up", UpwardY, false},
		{"down", DownwardY, false},
		{"DOWNWARD", DownwardY, false},
		{"sideways", DownwardY, true},
		{"", DownwardY, true},
	}
	for _, tt := range tests {
		got, err := ParseConvention(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseConvention(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseConvention(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePivotAndScanOrder(t *testing.T) {
	if p, err := ParsePivot("center"); err != nil || p != PivotCenter {
		t.Errorf("ParsePivot(center) = %v, %v", p, err)
	}
	if p, err := ParsePivot(""); err != nil || p != PivotNone {
		t.Errorf("ParsePivot(\"\") = %v, %v", p, err)
	}
	if p, err := ParsePivot("corner"); err != nil || p != PivotNone {
		t.Errorf("ParsePivot(corner) = %v, %v", p, err)
	}
	if _, err := ParsePivot("left"); err == nil {
		t.Error("ParsePivot(left) succeeded")
	}

	if o, err := ParseScanOrder("bottom"); err != nil || o != BottomRowFirst {
		t.Errorf("ParseScanOrder(bottom) = %v, %v", o, err)
	}
	if o, err := ParseScanOrder("Top"); err != nil || o != TopRowFirst {
		t.Errorf("ParseScanOrder(Top) = %v, %v", o, err)
	}
	if _, err := ParseScanOrder("middle"); err == nil {
		t.Error("ParseScanOrder(middle) succeeded")
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{UpwardY.String(), "up"},
		{DownwardY.String(), "down"},
		{Convention(9).String(), "Convention(9)"},
		{PivotCenter.String(), "center"},
		{Pivot(4).String(), "Pivot(4)"},
		{BottomRowFirst.String(), "bottom"},
		{ProfileUpwardY.String(), "up/center/top/z=1"},
		{ProfileDownwardY.String(), "down/none/top/z=0"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestCameraCentersViewport(t *testing.T) {
	c := NewCamera(1024, 768)
	if c.Position != [3]float32{512, 384, DefaultCameraDepth} {
		t.Errorf("camera Position = %v", c.Position)
	}
	if c.Width != 1024 || c.Height != 768 {
		t.Errorf("camera extent = %vx%v", c.Width, c.Height)
	}
	if c.Position[2] <= ProfileUpwardY.Depth {
		t.Error("camera must sit above tile depth")
	}
}

func TestCameraPan(t *testing.T) {
	c := NewCamera(100, 50)
	if x, y := c.Origin(); x != 0 || y != 0 {
		t.Errorf("Origin() = (%v, %v), want (0, 0)", x, y)
	}
	moved := c.Pan(10, -5)
	if x, y := moved.Origin(); x != 10 || y != -5 {
		t.Errorf("panned Origin() = (%v, %v), want (10, -5)", x, y)
	}
	if c.Position[0] != 50 {
		t.Error("Pan() modified the receiver")
	}
}
