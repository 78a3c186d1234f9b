package meshing

import (
	"errors"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// Channel compression and depth, mirroring the host voxel buffer's
// channel_compression/channel_depth accessors.
type Compression int

const (
	CompressionRaw Compression = iota
	CompressionUniform
	CompressionOther
)

type Depth int

const (
	DepthU8 Depth = iota
	DepthU16
)

// Error kinds, in order of policy severity. A missing library or a
// uniform buffer are soft failures signaled by an empty result and a nil
// error; everything below is a hard failure, logged and returned.
var (
	ErrUnsupportedCompression = errors.New("meshing: unsupported channel compression")
	ErrUnsupportedDepth       = errors.New("meshing: unsupported channel depth")
	ErrChannelReadFailed      = errors.New("meshing: channel read failed")
)

// VoxelBlock is the padded TYPE-channel input to a build: Size includes
// the one-voxel Padding border on every face.
type VoxelBlock struct {
	Size        [3]int32
	Compression Compression
	Depth       Depth
	Raw         []byte
}

func (b *VoxelBlock) idAt(flatIndex int32) (uint32, error) {
	switch b.Depth {
	case DepthU8:
		if flatIndex < 0 || int(flatIndex) >= len(b.Raw) {
			return 0, ErrChannelReadFailed
		}
		return uint32(b.Raw[flatIndex]), nil
	case DepthU16:
		i := int(flatIndex) * 2
		if i < 0 || i+1 >= len(b.Raw) {
			return 0, ErrChannelReadFailed
		}
		return uint32(b.Raw[i]) | uint32(b.Raw[i+1])<<8, nil
	default:
		return 0, ErrUnsupportedDepth
	}
}

// BuildParams are the per-call configurable parameters.
type BuildParams struct {
	Library                *blocky.Library
	LODIndex                uint8
	BakeOcclusion           bool
	BakedOcclusionDarkness  float32
	CollisionHint           bool
}

// SurfaceOutput is one material's packaged mesh arrays.
type SurfaceOutput struct {
	MaterialIndex uint32
	Positions     []geom.Vector3
	Normals       []geom.Vector3
	UVs           []geom.Vector2
	Colors        []rl.Color
	Tangents      []float32
	Indices       []uint32
}

// CollisionOutput is the packaged collision surface, when requested.
type CollisionOutput struct {
	Positions []geom.Vector3
	Indices   []uint32
}

// BuildResult is the full build output: packaged per-material surfaces
// plus an optional collision surface.
type BuildResult struct {
	Surfaces         []SurfaceOutput
	CollisionSurface *CollisionOutput
	Primitive        string
}

// Build validates the input channel, meshes the interior, appends LOD
// seams when requested, scales for LOD, and packages the result. scratch
// is reused across calls on the same thread and must not be shared across
// concurrent builds.
func Build(block *VoxelBlock, params BuildParams, scratch *Scratch) (BuildResult, error) {
	if params.Library == nil {
		return BuildResult{Primitive: "TRIANGLES"}, nil
	}

	scratch.Reset()

	if block.Compression == CompressionUniform {
		return BuildResult{Primitive: "TRIANGLES"}, nil
	}
	if block.Compression != CompressionRaw {
		log.Printf("[Mesher] unsupported channel compression %v", block.Compression)
		return BuildResult{Primitive: "TRIANGLES"}, ErrUnsupportedCompression
	}
	if block.Depth != DepthU8 && block.Depth != DepthU16 {
		log.Printf("[Mesher] unsupported channel depth %v", block.Depth)
		return BuildResult{Primitive: "TRIANGLES"}, ErrUnsupportedDepth
	}

	lib := params.Library
	lib.RLock()
	scratch.ResizeMaterials(lib.IndexedMaterialsCount())
	scratch.SetStrides(block.Size[0], block.Size[1], block.Size[2])

	err := meshInterior(lib, block, scratch, params)
	if err == nil && params.LODIndex > 0 {
		err = appendSeams(lib, block, scratch, params)
	}
	lib.RUnlock()

	if err != nil {
		log.Printf("[Mesher] %v", err)
		return BuildResult{Primitive: "TRIANGLES"}, err
	}

	if params.LODIndex > 0 {
		scaleResult(scratch, math.Pow(2, float64(params.LODIndex)))
	}

	return packageResult(scratch, params.CollisionHint), nil
}

func scaleResult(scratch *Scratch, factor float64) {
	f := float32(factor)
	for i := range scratch.Materials {
		positions := scratch.Materials[i].Positions
		for j := range positions {
			positions[j].X *= f
			positions[j].Y *= f
			positions[j].Z *= f
		}
	}
	for j := range scratch.Collision.Positions {
		scratch.Collision.Positions[j].X *= f
		scratch.Collision.Positions[j].Y *= f
		scratch.Collision.Positions[j].Z *= f
	}
}

func packageResult(scratch *Scratch, collisionHint bool) BuildResult {
	result := BuildResult{Primitive: "TRIANGLES"}
	for i := range scratch.Materials {
		m := &scratch.Materials[i]
		if m.VertexCount() == 0 {
			continue
		}
		result.Surfaces = append(result.Surfaces, SurfaceOutput{
			MaterialIndex: uint32(i),
			Positions:     append([]geom.Vector3(nil), m.Positions...),
			Normals:       append([]geom.Vector3(nil), m.Normals...),
			UVs:           append([]geom.Vector2(nil), m.UVs...),
			Colors:        append([]rl.Color(nil), m.Colors...),
			Tangents:      append([]float32(nil), m.Tangents...),
			Indices:       append([]uint32(nil), m.Indices...),
		})
	}
	if collisionHint && len(scratch.Collision.Positions) > 0 {
		result.CollisionSurface = &CollisionOutput{
			Positions: append([]geom.Vector3(nil), scratch.Collision.Positions...),
			Indices:   append([]uint32(nil), scratch.Collision.Indices...),
		}
	}
	return result
}
