package postgres

func (r *UserRepo) DummyPasswordHash() string {
	return r.dummyPasswordHash()
}
