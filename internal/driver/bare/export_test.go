package bare

func SetEffectiveUID(d *Driver, uid int) {
	d.euid = func() int { return uid }
}
