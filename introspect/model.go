package introspect

// Relation 一个可查询的表或视图，名称在所属schema内唯一
type Relation struct {
	Name string
	// Schema 所属schema，由遍历器填写
	Schema string
}

// Schema 数据库命名空间及其下的关系，保持查询返回的顺序
type Schema struct {
	Name      string
	Relations []Relation
}

// Database 内省结果的根节点
type Database struct {
	Name    string
	Schemas []Schema
}

// Relations 按schema顺序拼接所有关系，schema内顺序不变
func (my *Database) Relations() []Relation {
	total := 0
	for _, s := range my.Schemas {
		total += len(s.Relations)
	}
	list := make([]Relation, 0, total)
	for _, s := range my.Schemas {
		list = append(list, s.Relations...)
	}
	return list
}

// Introspection 持有一次内省得到的数据库结构
type Introspection struct {
	Database *Database
}

// Relations 返回扁平化的关系列表
func (my *Introspection) Relations() []Relation {
	return my.Database.Relations()
}
