package node

// buildElement adds the single representative element of a slice or array.
func (s *state) buildElement(id ID) error {
	n := &s.g.nodes[id]

	_, err := s.add(slot{
		parent:    id,
		role:      RoleElement,
		exported:  true,
		declaring: n.Signature,
		declared:  n.Descriptor.Elem,
		slotType:  n.Base.Elem(),
	})

	return err
}
