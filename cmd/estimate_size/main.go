// estimate_size measures how a large study log behaves in each local store:
// how big the subjects key gets and how long saving and loading it takes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/td0m/studyman/pkg/persist"
	"github.com/td0m/studyman/pkg/study"
	"github.com/td0m/studyman/pkg/view"
)

var (
	years  = flag.Int("years", 5, "Years of study to simulate")
	perDay = flag.Int("per-day", 5, "Topics created per day")
)

func main() {
	flag.Parse()

	total := 365 * *perDay * *years
	subjects := generate(total)
	dir, err := os.MkdirTemp("", "studyman-estimate")
	check(err)
	defer os.RemoveAll(dir)

	fmt.Printf("Topics: %d years, %d per day (%d total)\n", *years, *perDay, total)
	measureView(subjects)

	for _, opts := range []persist.Options{
		{Driver: persist.DriverFile, Path: filepath.Join(dir, "study.json")},
		{Driver: persist.DriverSQLite, Path: filepath.Join(dir, "study.db")},
	} {
		kv, err := persist.Open(opts)
		check(err)
		measureStore(opts.Driver, kv, subjects)
		check(kv.Close())
	}
}

func measureStore(name string, kv persist.KV, subjects []study.Subject) {
	ctx := context.Background()
	writeTime := measureTime(func() {
		check(persist.SaveJSON(ctx, kv, persist.KeySubjects, subjects))
	})

	var size int
	readTime := measureTime(func() {
		bs, err := kv.Get(ctx, persist.KeySubjects)
		check(err)
		size = len(bs)
		loaded := []study.Subject{}
		persist.LoadJSON(ctx, kv, persist.KeySubjects, &loaded, nil)
		if len(loaded) != len(subjects) {
			panic("subjects lost on load")
		}
	})

	fmt.Printf("[%s] size: %dKB, write: %dms, read: %dms\n",
		name, size/1024, writeTime.Milliseconds(), readTime.Milliseconds())
}

func measureView(subjects []study.Subject) {
	now := time.Now()
	renderTime := measureTime(func() {
		filtered := view.Apply(subjects, view.Filter{Priority: view.All, Status: view.StatusOverdue}, now)
		view.Summarize(subjects, now)
		view.Paginate(filtered, 1, 6)
		view.CompletedOverTime(subjects)
	})
	fmt.Printf("Derived views: %dms per render\n", renderTime.Milliseconds())
}

// generate spreads total topics over a dozen subjects, completing most of them.
func generate(total int) []study.Subject {
	store := study.NewStore()
	start := time.Now().AddDate(-*years, 0, 0)
	ids := make([]study.ID, 12)
	for i := range ids {
		id, err := store.AddSubject("Subject "+strconv.Itoa(i+1), start)
		check(err)
		ids[i] = id
	}
	for i := 0; i < total; i++ {
		at := start.Add(time.Duration(i) * 24 * time.Hour / time.Duration(*perDay))
		subject := ids[rand.Intn(len(ids))]
		topic, err := store.AddTopic(subject, study.TopicInput{
			Name:     randomString(12),
			Hours:    strconv.Itoa(rand.Intn(4)),
			Priority: study.Priorities[rand.Intn(len(study.Priorities))],
		}, at)
		check(err)
		if rand.Intn(10) < 8 {
			check(store.ToggleTopic(subject, topic, at.Add(time.Hour)))
		}
	}
	return store.Subjects()
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
