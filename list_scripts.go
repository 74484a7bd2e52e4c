package activeredis

// List script names.
const (
	scriptListInsert      = "insert"
	scriptListPop         = "pop"
	scriptListRemoveIndex = "remove_index"
	scriptListCount       = "count"
	scriptListContains    = "contains"
)

func init() {
	// Insert before the element currently at the given index. LINSERT pivots
	// on value, so the script resolves the index to its payload first; an
	// absent index is reported as an error reply the caller maps to
	// ErrIndexOutOfRange.
	RegisterScript(KindList, &Script{
		Name: scriptListInsert,
		Keys: []string{"key"},
		Args: []string{"index", "item"},
		Src: `
local pivot = redis.call('LINDEX', KEYS[1], ARGV[1])
if pivot == false then
  return redis.error_reply('index out of range')
end
return redis.call('LINSERT', KEYS[1], 'BEFORE', pivot, ARGV[2])
`,
	})

	// Capture the element at the index, overwrite it with the caller's
	// one-shot sentinel, remove the sentinel, return the capture. The
	// sentinel is unique per call so it can never match a real payload.
	RegisterScript(KindList, &Script{
		Name: scriptListPop,
		Keys: []string{"key"},
		Args: []string{"index", "sentinel"},
		Src: `
local item = redis.call('LINDEX', KEYS[1], ARGV[1])
if item == false then
  return redis.error_reply('index out of range')
end
redis.call('LSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('LREM', KEYS[1], 1, ARGV[2])
return item
`,
	})

	RegisterScript(KindList, &Script{
		Name: scriptListRemoveIndex,
		Keys: []string{"key"},
		Args: []string{"index", "sentinel"},
		Src: `
local item = redis.call('LINDEX', KEYS[1], ARGV[1])
if item == false then
  return redis.error_reply('index out of range')
end
redis.call('LSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('LREM', KEYS[1], 1, ARGV[2])
return 1
`,
	})

	RegisterScript(KindList, &Script{
		Name: scriptListCount,
		Keys: []string{"key"},
		Args: []string{"item"},
		Src: `
local i = 0
local count = 0
local val = redis.call('LINDEX', KEYS[1], i)
while val do
  if val == ARGV[1] then
    count = count + 1
  end
  i = i + 1
  val = redis.call('LINDEX', KEYS[1], i)
end
return count
`,
	})

	RegisterScript(KindList, &Script{
		Name: scriptListContains,
		Keys: []string{"key"},
		Args: []string{"item"},
		Src: `
local i = 0
local val = redis.call('LINDEX', KEYS[1], i)
while val do
  if val == ARGV[1] then
    return 1
  end
  i = i + 1
  val = redis.call('LINDEX', KEYS[1], i)
end
return 0
`,
	})
}
