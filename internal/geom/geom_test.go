package geom

import "testing"

func TestOppositeSideIsInvolution(t *testing.T) {
	for s := Side(0); s < SideCount; s++ {
		if OppositeSide[OppositeSide[s]] != s {
			t.Errorf("OppositeSide is not its own inverse at %v", s)
		}
	}
}

func TestSideNormalsAreUnitAxisAligned(t *testing.T) {
	tests := []struct {
		side Side
		want Vector3
	}{
		{SideNegX, Vector3{X: -1}},
		{SidePosX, Vector3{X: 1}},
		{SideNegY, Vector3{Y: -1}},
		{SidePosY, Vector3{Y: 1}},
		{SideNegZ, Vector3{Z: -1}},
		{SidePosZ, Vector3{Z: 1}},
	}
	for _, tt := range tests {
		got := SideNormals[tt.side]
		if got != tt.want {
			t.Errorf("SideNormals[%v] = %v, want %v", tt.side, got, tt.want)
		}
	}
}

func TestSideEdgesShareCornersWithSideCorners(t *testing.T) {
	for s := Side(0); s < SideCount; s++ {
		corners := SideCorners[s]
		for i, edgeIdx := range SideEdges[s] {
			a, b := EdgeCorners[edgeIdx][0], EdgeCorners[edgeIdx][1]
			wantA, wantB := corners[i], corners[(i+1)%4]
			if !(a == wantA && b == wantB) && !(a == wantB && b == wantA) {
				t.Errorf("side %v edge %d = (%d,%d), want (%d,%d)", s, i, a, b, wantA, wantB)
			}
		}
	}
}

func TestStridesConvention(t *testing.T) {
	st := NewStrides(5, 4, 3)
	if st.JY != 1 {
		t.Fatalf("JY = %d, want 1", st.JY)
	}
	if st.JX != 4 {
		t.Fatalf("JX = %d, want 4 (sy)", st.JX)
	}
	if st.JZ != 20 {
		t.Fatalf("JZ = %d, want 20 (sx*sy)", st.JZ)
	}
}

func TestSideNeighborOffsetsAreAntisymmetric(t *testing.T) {
	st := NewStrides(6, 6, 6)
	offsets := SideNeighborOffsets(st)
	for s := Side(0); s < SideCount; s++ {
		if offsets[s] != -offsets[OppositeSide[s]] {
			t.Errorf("offset[%v] = %d, offset[%v] = %d, want negatives", s, offsets[s], OppositeSide[s], offsets[OppositeSide[s]])
		}
	}
}

func TestCornerDeltaMatchesCornerPositions(t *testing.T) {
	positions := CornerPositions()
	for c := 0; c < 8; c++ {
		dx, dy, dz := CornerDelta(c)
		p := positions[c]
		wantX, wantY, wantZ := float32(-1), float32(-1), float32(-1)
		if p.X == 1 {
			wantX = 1
		}
		if p.Y == 1 {
			wantY = 1
		}
		if p.Z == 1 {
			wantZ = 1
		}
		if float32(dx) != wantX || float32(dy) != wantY || float32(dz) != wantZ {
			t.Errorf("CornerDelta(%d) = (%d,%d,%d), want (%v,%v,%v)", c, dx, dy, dz, wantX, wantY, wantZ)
		}
	}
}

func TestEdgeDeltaHasZeroOnVaryingAxis(t *testing.T) {
	for e, pair := range EdgeCorners {
		a, b := pair[0], pair[1]
		dx, dy, dz := EdgeDelta(e)
		zeros := 0
		if dx == 0 {
			zeros++
		}
		if dy == 0 {
			zeros++
		}
		if dz == 0 {
			zeros++
		}
		if zeros != 1 {
			t.Errorf("edge %d (%d,%d): EdgeDelta = (%d,%d,%d), want exactly one zero axis", e, a, b, dx, dy, dz)
		}
	}
}

func TestAABBContains(t *testing.T) {
	tests := []struct {
		p    Vector3
		want bool
	}{
		{Vector3{X: 0, Y: 0, Z: 0}, true},
		{Vector3{X: 1, Y: 1, Z: 1}, true},
		{Vector3{X: 0.5, Y: 0.5, Z: 0.5}, true},
		{Vector3{X: 1.1, Y: 0, Z: 0}, false},
		{Vector3{X: 0, Y: -0.1, Z: 0}, false},
	}
	for _, tt := range tests {
		if got := UnitCube.Contains(tt.p); got != tt.want {
			t.Errorf("UnitCube.Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
