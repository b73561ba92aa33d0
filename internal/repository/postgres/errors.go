package postgres

// pgerrUniqueViolation - код ошибки PostgreSQL для нарушения уникальности
const pgerrUniqueViolation = "23505"
