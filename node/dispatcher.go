package node

import "fixture-generator/typesig"

func (s *state) dispatch(id ID) error {
	switch s.g.nodes[id].Kind {
	default:
		return nil
	case typesig.KindStructural:
		return s.buildStruct(id)
	case typesig.KindCollection, typesig.KindArray:
		return s.buildElement(id)
	case typesig.KindMap:
		return s.buildMap(id)
	}
}
