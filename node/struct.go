package node

// buildStruct adds one child per member in declaration order.
func (s *state) buildStruct(id ID) error {
	n := &s.g.nodes[id]
	declaring, members := n.Signature, n.Descriptor.Members

	for _, m := range members {
		if !m.Exported && !s.Unexported {
			continue
		}

		_, err := s.add(slot{
			parent:    id,
			role:      RoleMember,
			member:    m.Name,
			index:     m.Index,
			exported:  m.Exported,
			declaring: declaring,
			declared:  m.Signature,
			slotType:  m.Type,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
