package meshing

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"BlockyMesher/internal/blocky"
	"BlockyMesher/internal/geom"
)

// colorOf resolves the base color a voxel's vertices are tinted with,
// before any AO shading: the baked model color for plain voxels, the
// fluid descriptor carries no color of its own so the model's is reused.
func colorOf(model *blocky.Model) rl.Color {
	return model.Color
}

// shadeColor darkens c by shade: (1-shade) * color. Alpha is left
// untouched.
func shadeColor(c rl.Color, shade float32) rl.Color {
	k := 1 - shade
	return rl.Color{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}

// appendSurfacePatch writes one side- or inner-surface's vertices and
// indices into arrays, offsetting positions by worldOffset and rebasing
// indices against the array's running vertex count. shades, when
// non-nil, holds one AO shade value per position; otherwise the flat
// base color is used for every vertex.
func appendSurfacePatch(arrays *blocky.PerMaterialArrays, positions []geom.Vector3, uvs []geom.Vector2, tangents []float32, indices []uint32, normal geom.Vector3, base rl.Color, shades []float32, worldOffset geom.Vector3) {
	baseOffset := arrays.IndexOffset()
	for i, p := range positions {
		pos := geom.Vector3{X: p.X + worldOffset.X, Y: p.Y + worldOffset.Y, Z: p.Z + worldOffset.Z}
		var uv geom.Vector2
		if i < len(uvs) {
			uv = uvs[i]
		}
		color := base
		if shades != nil {
			color = shadeColor(base, shades[i])
		}
		arrays.AppendVertex(pos, normal, uv, color)
	}
	if len(tangents) > 0 {
		for i := 0; i < len(positions); i++ {
			arrays.AppendTangent([4]float32{tangents[i*4], tangents[i*4+1], tangents[i*4+2], tangents[i*4+3]})
		}
	} else if len(positions) >= 3 {
		derived := deriveFaceTangent(positions, uvs, normal)
		for i := 0; i < len(positions); i++ {
			arrays.AppendTangent(derived)
		}
	}
	for _, idx := range indices {
		arrays.AppendIndices(baseOffset + idx)
	}
	arrays.AdvanceIndexOffset(uint32(len(positions)))
}

// appendCollisionPatch mirrors a patch's geometry into the collision
// surface, with its own independent index-offset bookkeeping.
func appendCollisionPatch(collision *blocky.CollisionSurface, positions []geom.Vector3, indices []uint32, worldOffset geom.Vector3) {
	world := make([]geom.Vector3, len(positions))
	for i, p := range positions {
		world[i] = geom.Vector3{X: p.X + worldOffset.X, Y: p.Y + worldOffset.Y, Z: p.Z + worldOffset.Z}
	}
	baseOffset := collision.AppendPositions(world)
	rebased := make([]uint32, len(indices))
	for i, idx := range indices {
		rebased[i] = baseOffset + idx
	}
	collision.AppendIndices(rebased...)
}

// sideSurfaceAt resolves which side-surface slot k of side s to emit for
// the current voxel: the fluid scratch for fluid voxels (always slot 0),
// a cutout override when the visibility decision found one, or the
// model's own baked side-surface otherwise.
func sideSurfaceAt(model *blocky.Model, isFluid bool, fluidScratch *FluidScratch, decision VisibilityDecision, s geom.Side, k int) *blocky.SideSurface {
	if isFluid {
		if k > 0 {
			return nil
		}
		return &fluidScratch.Sides[s]
	}
	if decision.UseCutout {
		if k >= len(decision.CutoutSurfaces) {
			return nil
		}
		return &decision.CutoutSurfaces[k]
	}
	return &model.SideSurfaces[s][k]
}

// meshInterior runs the sides pass and inside pass over every interior
// voxel, in z-major, x, y order. lib must already be read-locked by the
// caller.
func meshInterior(lib *blocky.Library, block *VoxelBlock, scratch *Scratch, params BuildParams) error {
	sx, sy, sz := block.Size[0], block.Size[1], block.Size[2]

	for z := int32(1); z < sz-1; z++ {
		for x := int32(1); x < sx-1; x++ {
			for y := int32(1); y < sy-1; y++ {
				index := y*scratch.Strides.JY + x*scratch.Strides.JX + z*scratch.Strides.JZ
				vid, err := block.idAt(index)
				if err != nil {
					return err
				}
				if vid == blocky.AirID || !lib.HasModel(vid) {
					continue
				}
				model := lib.Model(vid)
				worldOffset := geom.Vector3{X: float32(x - 1), Y: float32(y - 1), Z: float32(z - 1)}

				isFluid := model.IsFluid()
				if isFluid {
					read := func(dx, dy, dz int32) uint32 {
						id, rerr := block.idAt(index + scratch.Offset(dx, dy, dz))
						if rerr != nil {
							return blocky.AirID
						}
						return id
					}
					GenerateFluidModel(lib, model, read, scratch.Fluid)
				}

				sidesCount := model.SurfaceCount
				if isFluid {
					sidesCount = 1
				}

				for s := geom.Side(0); s < geom.SideCount; s++ {
					if !isFluid && model.SideEmpty(s) {
						continue
					}
					neighborID, nerr := block.idAt(index + scratch.SideOffsets[s])
					if nerr != nil {
						return nerr
					}
					var neighborModel *blocky.Model
					if lib.HasModel(neighborID) {
						neighborModel = lib.Model(neighborID)
					}
					decision := ResolveVisibility(lib, model, neighborModel, s)
					if !decision.Visible {
						continue
					}

					read := func(dx, dy, dz int32) uint32 {
						id, rerr := block.idAt(index + scratch.Offset(dx, dy, dz))
						if rerr != nil {
							return blocky.AirID
						}
						return id
					}

					for k := 0; k < sidesCount; k++ {
						surf := sideSurfaceAt(model, isFluid, scratch.Fluid, decision, s, k)
						if surf == nil || len(surf.Positions) == 0 {
							continue
						}

						var materialID uint32
						collisionEnabled := false
						if isFluid {
							materialID = lib.Fluid(model.FluidIndex).MaterialID
						} else {
							materialID = model.Surfaces[k].MaterialID
							collisionEnabled = model.Surfaces[k].CollisionEnabled
						}

						var shades []float32
						if params.BakeOcclusion {
							shades = BakeAO(lib, read, s, params.BakedOcclusionDarkness/3, surf.Positions)
						}

						arrays := &scratch.Materials[materialID]
						base := colorOf(model)
						appendSurfacePatch(arrays, surf.Positions, surf.UVs, surf.Tangents, surf.Indices, geom.SideNormals[s], base, shades, worldOffset)

						if params.CollisionHint && collisionEnabled {
							appendCollisionPatch(&scratch.Collision, surf.Positions, surf.Indices, worldOffset)
						}
					}
				}

				if !isFluid {
					for k := 0; k < model.SurfaceCount; k++ {
						surface := &model.Surfaces[k]
						if len(surface.Positions) == 0 {
							continue
						}
						arrays := &scratch.Materials[surface.MaterialID]
						appendInsideSurface(arrays, surface, colorOf(model), worldOffset)
						if params.CollisionHint && surface.CollisionEnabled {
							appendCollisionPatch(&scratch.Collision, surface.Positions, surface.Indices, worldOffset)
						}
					}
				}
			}
		}
	}
	return nil
}

// appendInsideSurface emits a model's own interior surface geometry: no
// AO, normals and indices taken straight from the baked surface.
func appendInsideSurface(arrays *blocky.PerMaterialArrays, surface *blocky.Surface, base rl.Color, worldOffset geom.Vector3) {
	baseOffset := arrays.IndexOffset()
	for i, p := range surface.Positions {
		pos := geom.Vector3{X: p.X + worldOffset.X, Y: p.Y + worldOffset.Y, Z: p.Z + worldOffset.Z}
		var normal geom.Vector3
		if i < len(surface.Normals) {
			normal = surface.Normals[i]
		}
		var uv geom.Vector2
		if i < len(surface.UVs) {
			uv = surface.UVs[i]
		}
		arrays.AppendVertex(pos, normal, uv, base)
	}
	if len(surface.Tangents) > 0 {
		for i := 0; i < len(surface.Positions); i++ {
			arrays.AppendTangent([4]float32{surface.Tangents[i*4], surface.Tangents[i*4+1], surface.Tangents[i*4+2], surface.Tangents[i*4+3]})
		}
	}
	for _, idx := range surface.Indices {
		arrays.AppendIndices(baseOffset + idx)
	}
	arrays.AdvanceIndexOffset(uint32(len(surface.Positions)))
}
