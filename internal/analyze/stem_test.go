package analyze

import (
	"fmt"
	"go/types"
)

func Example_stem() {
	st := newStem("Meta", nil)
	fmt.Println(st.Next(), st.Next(), st.Next())

	st = newStem("store.Order", map[string]struct{}{"store.Order2": {}})
	fmt.Println(st.Next(), st.Next(), st.Next())

	// Output:
	// Meta1 Meta2 Meta3
	// store.Order1 store.Order3 store.Order4
}

func Example_dealer() {
	var d dealer

	d.Needs(job{name: "store.Order", st: types.NewStruct(nil, nil)})
	j, ok := d.Next()
	fmt.Println("order:", j.name, ok)

	_, ok = d.Next()
	fmt.Println("empty:", ok)

	d.Needs(job{name: "store.Order"})
	_, ok = d.Next()
	fmt.Println("no duplicates:", ok)

	d.Needs(job{name: "store.Item"})
	d.Needs(job{name: "store.Page"})
	first, _ := d.Next()
	second, _ := d.Next()
	fmt.Println("in order:", first.name, second.name)

	_, ok = d.Next()
	fmt.Println("no more jobs:", ok)

	// Output:
	// order: store.Order true
	// empty: false
	// no duplicates: false
	// in order: store.Item store.Page
	// no more jobs: false
}
