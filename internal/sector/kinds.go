package sector

import "fmt"

// Road record layout.
const (
	roadLookID     = 61
	roadFlags      = 0x37
	roadStartNode  = 141
	roadEndNode    = 149
	roadStampCount = 433
	roadBaseSize   = 437
	roadStampSize  = 24
)

// Prefab record layout. The node list starts after the count; a second
// counted list of 8-byte entries follows it, then the origin byte.
const (
	prefabDefID      = 57
	prefabFlags      = 0x36
	prefabNodeCount  = 81
	prefabNodeList   = 85
	prefabOriginBase = 0x61
)

// Company record layout.
const (
	companyID         = 57
	companyPrefabLink = 73
	companyJobNode    = 81
	companyLoadNode   = 93
	companyBaseSize   = 109
)

// City record layout.
const (
	cityID       = 57
	cityNode     = 73
	cityBaseSize = 81
)

// Counted node list layout shared by cut planes, traffic rules and triggers.
const (
	listCount = 57
	listNodes = 61
)

const hiddenBit = 0x02

func decodeRoad(v *view, it *Item, env Env) bool {
	stamps := v.i32(roadStampCount)
	if !v.ok || stamps < 0 {
		return false
	}

	it.StampCount = int(stamps)
	it.BlockSize = roadBaseSize + roadStampSize*it.StampCount
	it.Hidden = v.u8(roadFlags)&hiddenBit != 0
	it.RoadLookID = v.u32(roadLookID)
	it.NodeIDs = []uint64{v.u64(roadStartNode), v.u64(roadEndNode)}

	if env.Catalogue != nil {
		if look, ok := env.Catalogue.RoadLook(it.RoadLookID); ok {
			it.RoadLook = look
		} else {
			it.Unresolved = append(it.Unresolved, fmt.Sprintf("road look %d", it.RoadLookID))
		}
	}

	return v.ok
}

func decodePrefab(v *view, it *Item, env Env) bool {
	count := v.i32(prefabNodeCount)
	if !v.ok || count < 1 || count > maxNodeRefs {
		return false
	}
	n := int(count)

	extraAt := prefabNodeList + 8*n
	if !v.fits(extraAt, 4) {
		return false
	}

	extra := v.i32(extraAt)
	if extra < 0 || extra > maxNodeRefs {
		return false
	}

	originAt := prefabOriginBase + 8*n + 8*int(extra)
	if !v.fits(originAt, 1) {
		return false
	}

	it.Origin = v.u8(originAt) & 0x03
	it.BlockSize = originAt + 1
	it.Hidden = v.u8(prefabFlags)&hiddenBit != 0
	it.PrefabID = v.u32(prefabDefID)

	it.NodeIDs = make([]uint64, n)
	for i := range it.NodeIDs {
		it.NodeIDs[i] = v.u64(prefabNodeList + 8*i)
	}

	if env.Catalogue != nil {
		if def, ok := env.Catalogue.Prefab(it.PrefabID); ok {
			it.Prefab = def
		} else {
			it.Unresolved = append(it.Unresolved, fmt.Sprintf("prefab %d", it.PrefabID))
		}
	}

	return v.ok
}

func decodeCompany(v *view, it *Item, env Env) bool {
	owned := 0
	for _, node := range env.Sector {
		if node.ForwardItemID == it.UID {
			owned++
		}
	}

	// the job and load area nodes are stored separately
	spots := owned - 2
	if spots < 0 {
		spots = 0
	}
	if spots > maxNodeRefs {
		return false
	}

	it.BlockSize = companyBaseSize + 8*spots
	if !v.fits(0, it.BlockSize) {
		return false
	}

	it.CompanyID = v.u64(companyID)
	it.PrefabLinkID = v.u64(companyPrefabLink)
	it.NodeIDs = []uint64{v.u64(companyJobNode), v.u64(companyLoadNode)}
	for i := 0; i < spots; i++ {
		it.SpotNodeIDs = append(it.SpotNodeIDs, v.u64(companyBaseSize+8*i))
	}

	if env.Catalogue != nil {
		if name, ok := env.Catalogue.CompanyName(it.CompanyID); ok {
			it.CompanyName = name
		} else {
			it.Unresolved = append(it.Unresolved, fmt.Sprintf("company %d", it.CompanyID))
		}
	}

	return v.ok
}

func decodeCity(v *view, it *Item, env Env) bool {
	it.CityID = v.u64(cityID)
	if !v.ok || it.CityID>>56 != 0 {
		return false
	}

	it.BlockSize = cityBaseSize
	it.NodeIDs = []uint64{v.u64(cityNode)}

	if env.Catalogue != nil {
		if name, ok := env.Catalogue.CityName(it.CityID); ok {
			it.CityName = name
		} else {
			it.Unresolved = append(it.Unresolved, fmt.Sprintf("city %d", it.CityID))
		}
	}

	return v.ok
}

// fixed decodes a record of constant size with node references at the
// given offsets.
func fixed(size int, nodes ...int) decoder {
	return func(v *view, it *Item, _ Env) bool {
		it.BlockSize = size
		it.NodeIDs = make([]uint64, len(nodes))
		for i, off := range nodes {
			it.NodeIDs[i] = v.u64(off)
		}

		return v.ok
	}
}

// nodeList decodes a record holding a counted node list followed by a
// trailer; base is the record size without the list.
func nodeList(base int) decoder {
	return func(v *view, it *Item, _ Env) bool {
		count := v.i32(listCount)
		if !v.ok || count < 1 || count > maxNodeRefs {
			return false
		}

		n := int(count)
		it.BlockSize = base + 8*n
		if !v.fits(listNodes, 8*n) {
			return false
		}

		it.NodeIDs = make([]uint64, n)
		for i := range it.NodeIDs {
			it.NodeIDs[i] = v.u64(listNodes + 8*i)
		}

		return v.ok
	}
}

// decodeDunno rejects records of the unidentified kind: they carry no node
// references that could confirm a match.
func decodeDunno(*view, *Item, Env) bool {
	return false
}
