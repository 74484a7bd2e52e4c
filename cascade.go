package activeredis

// scriptDeleteAll names the shared cascading delete script. It is registered
// under KindAny so every structure kind inherits it.
const scriptDeleteAll = "delete_all"

// The cascading delete walks the reference graph rooted at KEYS[1] entirely
// on the store side: per key it enumerates elements by kind, follows every
// reference payload, and deletes containers children-first. A visited set
// bounds the walk when references form a cycle. Unrecognized kinds are
// deleted without a walk. Returns the number of keys removed.
//
// The walk uses an explicit stack of (key, expanded) frames instead of Lua
// recursion: a frame's first visit pushes its referenced children, its second
// visit deletes the key, so children are always gone before their container.
const deleteAllSrc = `
local prefix = 'redis:struct:'
local visited = {}
local deleted = 0

local function refkey(value)
  if string.sub(value, 1, #prefix) == prefix then
    return string.sub(value, #prefix + 1)
  end
  return nil
end

local function typename(key)
  local t = redis.call('TYPE', key)
  if type(t) == 'table' then
    return t['ok']
  end
  return t
end

local stack = {{KEYS[1], false}}
while #stack > 0 do
  local frame = stack[#stack]
  local key = frame[1]
  if frame[2] then
    table.remove(stack)
    if redis.call('DEL', key) > 0 then
      deleted = deleted + 1
    end
  elseif visited[key] then
    table.remove(stack)
  else
    visited[key] = true
    frame[2] = true
    local kind = typename(key)
    local values = {}
    if kind == 'list' then
      local i = 0
      local item = redis.call('LINDEX', key, i)
      while item do
        values[#values + 1] = item
        i = i + 1
        item = redis.call('LINDEX', key, i)
      end
    elseif kind == 'hash' then
      values = redis.call('HVALS', key)
    elseif kind == 'set' then
      values = redis.call('SMEMBERS', key)
    elseif kind == 'zset' then
      values = redis.call('ZRANGE', key, 0, -1)
    end
    for i = 1, #values do
      local ref = refkey(values[i])
      if ref and not visited[ref] then
        stack[#stack + 1] = {ref, false}
      end
    end
  end
end
return deleted
`

func init() {
	RegisterScript(KindAny, &Script{
		Name: scriptDeleteAll,
		Keys: []string{"key"},
		Src:  deleteAllSrc,
	})
}
