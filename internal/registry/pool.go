package registry

import "github.com/CharlyCst/rio/internal/pool"

// recordPool recycles *accessRecord nodes through internal/pool's dynamic
// pool, rather than letting each record/clear cycle allocate and discard.
type recordPool struct {
	p pool.Pool
}

func newRecordPool() recordPool {
	return recordPool{p: pool.NewDynamic(func() interface{} { return &accessRecord{} })}
}

func (rp recordPool) get() *accessRecord {
	return rp.p.Get().(*accessRecord)
}

func (rp recordPool) put(rec *accessRecord) {
	rec.task = 0
	rec.mode = ModeRead
	rp.p.Put(rec)
}
