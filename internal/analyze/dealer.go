package analyze

import "go/types"

// job is a struct type waiting to be converted into a shape.
type job struct {
	name   string
	st     *types.Struct
	params []string
}

// dealer hands out jobs in the order they were first needed, each once.
type dealer struct {
	needs []job
	done  map[string]struct{}
}

// Needs queues j unless a job of the same name was queued before.
func (d *dealer) Needs(j job) {
	if d.done == nil {
		d.done = make(map[string]struct{})
	}

	if _, exists := d.done[j.name]; exists {
		return
	}

	d.done[j.name] = struct{}{}
	d.needs = append(d.needs, j)
}

// Next returns the oldest queued job.
func (d *dealer) Next() (job, bool) {
	if len(d.needs) == 0 {
		return job{}, false
	}

	j := d.needs[0]
	d.needs = d.needs[1:]

	return j, true
}
