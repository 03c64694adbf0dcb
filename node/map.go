package node

// buildMap adds the representative key and value of a map.
func (s *state) buildMap(id ID) error {
	n := &s.g.nodes[id]
	declaring, desc, base := n.Signature, n.Descriptor, n.Base

	if _, err := s.add(slot{
		parent:    id,
		role:      RoleKey,
		exported:  true,
		declaring: declaring,
		declared:  desc.Key,
		slotType:  base.Key(),
	}); err != nil {
		return err
	}

	_, err := s.add(slot{
		parent:    id,
		role:      RoleValue,
		exported:  true,
		declaring: declaring,
		declared:  desc.Elem,
		slotType:  base.Elem(),
	})

	return err
}
