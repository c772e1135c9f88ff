package decay_test

import (
	"encoding/json"
	"fmt"

	"github.com/secureworks/decay"
)

func Example() {
	store := decay.NewPlace("/src/app/store.go", 10, 0)
	service := decay.NewPlace("/src/app/service.go", 20, 0)
	handler := decay.NewPlace("/src/app/handler.go", 30, 0)

	d := decay.New[*TaskError](store, decay.NoteOf("root cause"))
	d = d.FurtherUnnoted(service)
	d = d.Further(handler, decay.NoteOf("note #2"))

	fmt.Println(d.Len())
	fmt.Println(d)
	fmt.Printf("%#v\n", d)

	root := d.Root()
	fmt.Println(root.Internal(), root.Note, root.Places)

	byt, _ := json.Marshal(d)
	fmt.Println(string(byt))

	// Output:
	// 2
	// note #2: root cause
	// decay.Decay{place: [app/handler.go:30], note: "note #2", place: [app/service.go:20 app/store.go:10], note: "root cause"}
	// true root cause [/src/app/service.go:20 /src/app/store.go:10]
	// ["note #2","root cause"]
}

func ExampleMorph() {
	fetch := func() *TaskError { return &TaskError{Task: 3} }

	lift := decay.Morph[*TaskError](decay.NewPlace("/src/app/client.go", 8, 0), decay.NoteOf("fetching profile"))
	d := lift(fetch())

	fmt.Println(d)
	fmt.Println(d.Kind(), d.Inner().Kind())

	byt, _ := json.Marshal(d)
	fmt.Println(string(byt))

	// Output:
	// fetching profile: task 3 failed
	// wrapped leaf
	// ["fetching profile",{"task":3}]
}

func ExampleReport() {
	var report decay.Report[*TaskError]
	err := json.Unmarshal([]byte(`["handling request",{"task":9}]`), &report)
	if err != nil {
		panic(err)
	}

	fmt.Println(report)
	fmt.Println(report.Texts())
	fmt.Println(report.Outers()[0].Task)

	// Output:
	// handling request: task 9 failed
	// [handling request]
	// 9
}
